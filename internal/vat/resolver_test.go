package vat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicesync/pkg/models"
)

func TestResolve(t *testing.T) {
	table, err := LoadTable(writeMappingFile(t,
		"country_code,vat_type_id,vat_rate\n"+
			"NL,111,0.21\n"+
			"DE,222,0.19\n"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	resolver := NewResolver(table)

	seed := Resolution{VATTypeID: 999, Rate: 0.09, PricePerUnit: 25.5}

	tests := []struct {
		name         string
		country      string
		nominalTotal float64
		want         Resolution
	}{
		{
			name:         "home country takes table values, keeps catalog price",
			country:      "NL",
			nominalTotal: 51,
			want:         Resolution{VATTypeID: 111, Rate: 0.21, PricePerUnit: 25.5},
		},
		{
			name:         "other member state takes its own row",
			country:      "DE",
			nominalTotal: 51,
			want:         Resolution{VATTypeID: 222, Rate: 0.19, PricePerUnit: 25.5},
		},
		{
			name:         "non-eu is zero rated at the marketplace price",
			country:      "US",
			nominalTotal: 20,
			want:         Resolution{VATTypeID: NonEUVATTypeID, Rate: 0, PricePerUnit: 20},
		},
		{
			name:         "non-eu with zero total",
			country:      "GB",
			nominalTotal: 0,
			want:         Resolution{VATTypeID: NonEUVATTypeID, Rate: 0, PricePerUnit: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.country, tt.nominalTotal, seed)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMemberStateMissingFromTable(t *testing.T) {
	table, err := LoadTable(writeMappingFile(t, "country_code,vat_type_id,vat_rate\nNL,111,0.21\n"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	_, err = NewResolver(table).Resolve("FR", 10, Resolution{})

	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want models.ErrNotFound, got %v", err)
	}
	assert.ErrorContains(t, err, "FR")
}

func TestIsEUMember(t *testing.T) {
	assert.True(t, IsEUMember("NL"))
	assert.True(t, IsEUMember("SK"))
	assert.False(t, IsEUMember("GB"))
	assert.False(t, IsEUMember("US"))
	assert.False(t, IsEUMember("nl"), "codes are matched case sensitively")
}

func TestEUMembers(t *testing.T) {
	members := EUMembers()

	assert.Len(t, members, 27)
	assert.Equal(t, "AT", members[0])
	assert.Contains(t, members, HomeCountry)
}
