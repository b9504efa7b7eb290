package shape

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	for _, v := range []any{1, int64(2), 3.5, "4.25", json.Number("5")} {
		_, ok := Float(v)
		require.True(t, ok, "%v", v)
	}

	for _, v := range []any{nil, "", " ", "abc", "NaN", "nan", "Inf", "-inf", math.NaN(), math.Inf(-1), json.Number("NaN")} {
		_, ok := Float(v)
		require.False(t, ok, "%v", v)
	}
}
