package postgres

import (
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyPropertyFilterRequiredOnly(t *testing.T) {
	where, args := applyPropertyFilter(domain.PropertyFilter{
		MaxRent:   1000,
		Locations: []string{"downtown"},
	})

	assert.Equal(t, "WHERE p.monthly_rent <= $1 AND p.location = ANY($2)", where)
	assert.Equal(t, []interface{}{1000.0, []string{"downtown"}}, args)
}

func TestApplyPropertyFilterAllConstraints(t *testing.T) {
	minBedrooms := 2
	where, args := applyPropertyFilter(domain.PropertyFilter{
		MaxRent:     750.5,
		Locations:   []string{"downtown", "uptown"},
		Types:       []string{"Apartment"},
		MinBedrooms: &minBedrooms,
	})

	assert.Equal(t,
		"WHERE p.monthly_rent <= $1 AND p.location = ANY($2) AND p.type = ANY($3) AND p.bedrooms >= $4",
		where,
	)
	assert.Equal(t, []interface{}{750.5, []string{"downtown", "uptown"}, []string{"Apartment"}, 2}, args)
}

func TestApplyPropertyFilterEmptyTypesKept(t *testing.T) {
	where, args := applyPropertyFilter(domain.PropertyFilter{
		MaxRent:   1,
		Locations: []string{"a"},
		Types:     []string{},
	})
	assert.Contains(t, where, "p.type = ANY($3)")
	assert.Len(t, args, 3)
}
