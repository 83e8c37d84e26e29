package smartcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCaseInsensitive(t *testing.T) {
	m := map[string]any{"App_Id": "1", "NAME_SPACE": float64(3)}

	t.Run("matches regardless of case", func(t *testing.T) {
		for _, key := range []string{"APP_ID", "app_id", "App_Id"} {
			v, ok := getCaseInsensitive(m, key)
			require.True(t, ok, "expected a match for %q", key)
			assert.Equal(t, "1", v)
		}
	})

	t.Run("misses absent keys", func(t *testing.T) {
		_, ok := getCaseInsensitive(m, "MESSAGE")
		assert.False(t, ok)
	})

	t.Run("handles nil map", func(t *testing.T) {
		_, ok := getCaseInsensitive(nil, "APP_ID")
		assert.False(t, ok)
	})
}

func TestGetString(t *testing.T) {
	m := map[string]any{"NAME": "hdmi1", "COUNT": float64(2), "EMPTY": nil}

	t.Run("returns string values", func(t *testing.T) {
		v := getString(m, "name")
		require.NotNil(t, v)
		assert.Equal(t, "hdmi1", *v)
	})

	t.Run("non-strings and nulls yield nil", func(t *testing.T) {
		assert.Nil(t, getString(m, "COUNT"))
		assert.Nil(t, getString(m, "EMPTY"))
		assert.Nil(t, getString(m, "MISSING"))
	})
}

func TestGetInt(t *testing.T) {
	m := map[string]any{"FLOAT": float64(3), "INT": 5, "TEXT": "7", "ZERO": float64(0)}

	t.Run("accepts json numbers", func(t *testing.T) {
		v := getInt(m, "FLOAT")
		require.NotNil(t, v)
		assert.Equal(t, 3, *v)
	})

	t.Run("accepts native ints", func(t *testing.T) {
		v := getInt(m, "INT")
		require.NotNil(t, v)
		assert.Equal(t, 5, *v)
	})

	t.Run("zero is a value, not absence", func(t *testing.T) {
		v := getInt(m, "ZERO")
		require.NotNil(t, v)
		assert.Equal(t, 0, *v)
	})

	t.Run("strings and missing keys yield nil", func(t *testing.T) {
		assert.Nil(t, getInt(m, "TEXT"))
		assert.Nil(t, getInt(m, "MISSING"))
	})
}

func TestGetMap(t *testing.T) {
	m := map[string]any{
		"ITEM":  map[string]any{"VALUE": "x"},
		"PLAIN": "not a map",
	}

	t.Run("returns nested maps case insensitively", func(t *testing.T) {
		item := getMap(m, "item")
		require.NotNil(t, item)
		assert.Equal(t, "x", item["VALUE"])
	})

	t.Run("non-maps yield an empty map", func(t *testing.T) {
		assert.Empty(t, getMap(m, "PLAIN"))
		assert.Empty(t, getMap(m, "MISSING"))
	})
}
