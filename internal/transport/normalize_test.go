package transport

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reviewmarket/api/internal/apperror"
)

func TestNormalizeMergesBodyOverQuery(t *testing.T) {
	query := url.Values{}
	query.Set("name", "from-query")
	query.Set("page", "2")

	f := Normalize([]byte(`{"name":"from-body","price":9.5}`), query)

	require.Equal(t, "from-body", f.String("name"))
	require.Equal(t, "2", f.String("page"))

	price, ok := f.Float("price")
	require.True(t, ok)
	require.Equal(t, 9.5, price)
}

func TestNormalizeIgnoresNonObjectBody(t *testing.T) {
	query := url.Values{}
	query.Set("name", "kept")

	for _, body := range [][]byte{
		nil,
		[]byte(""),
		[]byte("not json"),
		[]byte(`["an","array"]`),
		[]byte(`42`),
	} {
		f := Normalize(body, query)
		require.Equal(t, "kept", f.String("name"))
	}
}

func TestFieldsHas(t *testing.T) {
	f := Normalize([]byte(`{"empty":"","null":null,"zero":0,"name":"x"}`), nil)

	require.True(t, f.Has("name"))
	require.True(t, f.Has("zero"))
	require.False(t, f.Has("empty"))
	require.False(t, f.Has("null"))
	require.False(t, f.Has("missing"))
}

func TestFieldsString(t *testing.T) {
	f := Normalize([]byte(`{"id":7,"name":"x"}`), nil)

	require.Equal(t, "x", f.String("name"))
	require.Equal(t, "7", f.String("id"))
	require.Equal(t, "", f.String("missing"))
}

func TestFieldsFloatParsesStrings(t *testing.T) {
	query := url.Values{}
	query.Set("price", "12.5")

	f := Normalize(nil, query)
	price, ok := f.Float("price")
	require.True(t, ok)
	require.Equal(t, 12.5, price)

	_, ok = f.Float("missing")
	require.False(t, ok)

	f = Normalize([]byte(`{"price":"abc"}`), nil)
	_, ok = f.Float("price")
	require.False(t, ok)
}

func TestFieldsRequire(t *testing.T) {
	f := Normalize([]byte(`{"name":"x","description":""}`), nil)

	require.NoError(t, f.Require("name"))
	require.ErrorIs(t, f.Require("name", "description"), apperror.ErrValidation)
	require.ErrorIs(t, f.Require("missing"), apperror.ErrValidation)
}
