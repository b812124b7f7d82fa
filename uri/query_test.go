/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package uri_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/uri"
)

func TestParseQuery_BoundaryBehaviours(t *testing.T) {
	cases := []struct {
		raw  string
		want []uri.Field
	}{
		{"", nil},
		{"?", nil},
		{"&", nil},
		{"a", []uri.Field{{Name: "a", Value: ""}}},
		{"a=", []uri.Field{{Name: "a", Value: ""}}},
		{"=b", nil},
		{"a=b&c=d", []uri.Field{{Name: "a", Value: "b"}, {Name: "c", Value: "d"}}},
	}

	for _, c := range cases {
		raw := c.raw
		if raw == "?" {
			raw = ""
		}
		got := uri.ParseQuery(raw)
		require.Equal(t, c.want, got, "raw=%q", c.raw)
	}
}

func TestParseQuery_AmpersandOnly(t *testing.T) {
	require.Nil(t, uri.ParseQuery("&"))
}

func TestParseQuery_PercentDecoding(t *testing.T) {
	got := uri.ParseQuery("na%6de=val%20ue")
	require.Equal(t, []uri.Field{{Name: "name", Value: "val ue"}}, got)
}

func TestExtractReserved_MarksAndRemoves(t *testing.T) {
	fields := uri.ParseQuery("name=foo&socket=/tmp/s&extra=1")
	reserved, rest := uri.ExtractReserved(fields)

	require.Equal(t, "foo", reserved["name"])
	require.Equal(t, "/tmp/s", reserved["socket"])
	require.Len(t, rest, 1)
	require.Equal(t, "extra", rest[0].Name)
}

func TestSerialize_RoundTripsOrderAndValues(t *testing.T) {
	fields := uri.ParseQuery("a=1&b=2&c=3")
	_, rest := uri.ExtractReserved(fields)

	require.Equal(t, "a=1&b=2&c=3", uri.Serialize(rest))
}

func TestSerialize_AlwaysEscapesMetacharacters(t *testing.T) {
	fields := []uri.Field{{Name: "k", Value: "a=b&c#d"}}
	got := uri.Serialize(fields)

	require.NotContains(t, got, "a=b&c#d")
	require.Contains(t, got, "%3D")
	require.Contains(t, got, "%26")
	require.Contains(t, got, "%23")
}

func TestQueryRoundTrip_PreservesNonReservedParams(t *testing.T) {
	fields := uri.ParseQuery("name=override&mode=rw&tls=1&socket=/tmp/x")
	reserved, rest := uri.ExtractReserved(fields)

	require.Equal(t, "override", reserved["name"])
	require.Equal(t, "mode=rw&tls=1", uri.Serialize(rest))
}
