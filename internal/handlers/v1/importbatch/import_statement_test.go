package importbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnMappingBody_ToMapping(t *testing.T) {
	balance := 4
	direction := 5

	mapping := ColumnMappingBody{
		DateColumn:        0,
		DescriptionColumn: 1,
		AmountColumn:      2,
		BalanceColumn:     &balance,
		DirectionColumn:   &direction,
	}.toMapping()

	assert.Equal(t, 0, mapping.Date)
	assert.Equal(t, 1, mapping.Description)
	assert.Equal(t, 2, mapping.Amount)
	assert.Nil(t, mapping.Reference)
	assert.Equal(t, &balance, mapping.Balance)
	assert.Equal(t, &direction, mapping.Direction)
}
