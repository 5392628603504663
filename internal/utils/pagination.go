package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/idea-tracker-api/internal/constants"
)

// TotalCountHeader carries the number of items matching a paginated listing.
const TotalCountHeader = "X-Total-Count"

// PaginationParams holds the pagination parameters. A zero Limit means the client did not paginate.
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts page and limit from the query string.
// A page without a limit uses the default page size.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	var params PaginationParams

	page, err := intQuery(c, "page")
	if err != nil {
		return params, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return params, err
	}

	params.Page = page
	params.Limit = limit
	if params.Page > 0 && params.Limit == 0 {
		params.Limit = constants.DefaultPageSize
	}

	return params, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
