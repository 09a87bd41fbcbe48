package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryParams(t *testing.T) {
	params := QueryParams("https://www.mangaupdates.com/series.html?id=33&act=list")
	require.Equal(t, "33", params.Get("id"))
	require.Equal(t, "list", params.Get("act"))

	require.Empty(t, QueryParams("javascript:loadUser(1234,\"read\")"))
	require.Empty(t, QueryParams("://not a url"))
}

func TestID(t *testing.T) {
	cases := []struct {
		href   string
		expect int
		ok     bool
	}{
		{href: "https://site/x?id=42", expect: 42, ok: true},
		{href: "https://site/x", ok: false},
		{href: "https://site/x?id=abc", ok: false},
		{href: "series.html?id=33", expect: 33, ok: true},
		{href: "https://site/x?id=", ok: false},
	}

	for _, test := range cases {
		id, ok := ID(test.href)
		require.Equal(t, test.ok, ok, test.href)
		if ok {
			require.Equal(t, test.expect, id, test.href)
		}
	}
}
