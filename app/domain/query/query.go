package query

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
}

func GetPaginationFromQuery(reqCtx *gin.Context) (*Pagination, error) {
	limitStr := reqCtx.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	offsetStr := reqCtx.Query("offset")
	order := reqCtx.DefaultQuery("order", "asc")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("invalid limit number")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var offset *int
	if offsetStr != "" {
		offsetInt, err := strconv.Atoi(offsetStr)
		if err != nil || offsetInt < 0 {
			return nil, fmt.Errorf("invalid offset number")
		}
		offset = &offsetInt
	}

	if order != "asc" && order != "desc" {
		return nil, fmt.Errorf("invalid order")
	}

	return &Pagination{
		Limit:  &limit,
		Offset: offset,
		Order:  order,
	}, nil
}
