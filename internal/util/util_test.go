package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvUniversal(t *testing.T) {
	t.Setenv("AB_DATA_DIR", "/srv/alarms")
	t.Setenv("AB_CLIENT", "flng")

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no variables", input: "plain string", want: "plain string"},
		{name: "unix style", input: "$AB_DATA_DIR/in.csv", want: "/srv/alarms/in.csv"},
		{name: "unix braces", input: "${AB_DATA_DIR}/in.csv", want: "/srv/alarms/in.csv"},
		{name: "windows style", input: "%AB_DATA_DIR%\\%AB_CLIENT%.csv", want: "/srv/alarms\\flng.csv"},
		{name: "missing windows var", input: "x%AB_NOT_SET_ANYWHERE%y", want: "xy"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExpandEnvUniversal(tc.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 120)
	testCases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short kept", in: "High level alarm", max: 100, want: "High level alarm"},
		{name: "exact length kept", in: strings.Repeat("b", 100), max: 100, want: strings.Repeat("b", 100)},
		{name: "long cut with ellipsis", in: long, max: 100, want: strings.Repeat("a", 100) + "..."},
		{name: "multibyte runes", in: "°°°°", max: 2, want: "°°..."},
		{name: "zero max disables", in: long, max: 0, want: long},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(tc.in, tc.max))
		})
	}
}

func TestMaskCredentials(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "password masked", in: "postgres://dcs:s3cret@db:5432/alarms", want: "postgres://dcs:********@db:5432/alarms"},
		{name: "no password", in: "postgres://dcs@db/alarms", want: "postgres://dcs@db/alarms"},
		{name: "no userinfo", in: "postgres://db/alarms", want: "postgres://db/alarms"},
		{name: "not a uri", in: "host=db user=dcs", want: "host=db user=dcs"},
		{name: "at sign in password", in: "postgres://u:p@ss@db/x", want: "postgres://u:********@db/x"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskCredentials(tc.in))
		})
	}
}
