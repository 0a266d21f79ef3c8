package postgres

import (
	"fmt"
	"strings"

	"recommendation-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argID: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPropertyFilter folds the present constraints of filter into a WHERE clause.
// A non-nil empty type list matches nothing, like PropertyFilter.Matches.
func applyPropertyFilter(filter domain.PropertyFilter) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.addCondition("%s <= $%d", "p.monthly_rent", filter.MaxRent)
	qb.addCondition("%s = ANY($%d)", "p.location", filter.Locations)

	if filter.Types != nil {
		qb.addCondition("%s = ANY($%d)", "p.type", filter.Types)
	}
	if filter.MinBedrooms != nil {
		qb.addCondition("%s >= $%d", "p.bedrooms", *filter.MinBedrooms)
	}

	return qb.build()
}
