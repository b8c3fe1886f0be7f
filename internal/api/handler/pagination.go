package handler

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// pageFromQuery reads ?page= and ?limit=. Absent values take the defaults;
// limit is capped at maxLimit.
func pageFromQuery(c echo.Context) (domain.Page, error) {
	number, err := positiveQueryInt(c, "page", defaultPage)
	if err != nil {
		return domain.Page{}, err
	}
	limit, err := positiveQueryInt(c, "limit", defaultLimit)
	if err != nil {
		return domain.Page{}, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if int64(number-1) > math.MaxInt64/int64(limit) {
		return domain.Page{}, echo.NewHTTPError(http.StatusBadRequest, "page is out of range")
	}
	return domain.Page{Number: number, Limit: limit}, nil
}

func positiveQueryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return n, nil
}

// writePageHeaders sets the Link and X-Total-Count headers of a listing.
// Links keep every other query parameter of the request.
func writePageHeaders(c echo.Context, page domain.Page, lastPage int, total int64) {
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	c.Response().Header().Set("Link", linkHeader(c.Request().URL.Path, c.QueryParams(), page, lastPage))
}

func linkHeader(path string, query url.Values, page domain.Page, lastPage int) string {
	link := func(number int, rel string) string {
		q := make(url.Values, len(query)+2)
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(number))
		q.Set("limit", strconv.Itoa(page.Limit))
		return fmt.Sprintf("<%s?%s>; rel=%q", path, q.Encode(), rel)
	}

	links := []string{link(1, "first")}
	if page.Number > 1 {
		links = append(links, link(min(page.Number-1, lastPage), "prev"))
	}
	if page.Number < lastPage {
		links = append(links, link(page.Number+1, "next"))
	}
	links = append(links, link(lastPage, "last"))
	return strings.Join(links, ", ")
}
