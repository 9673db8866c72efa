package jobseeker

import (
	"reflect"
	"testing"
)

func TestSplitSkills(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go,postgres,docker", []string{"go", "postgres", "docker"}},
		{" go , postgres ", []string{"go", "postgres"}},
		{"go,,postgres,", []string{"go", "postgres"}},
	}
	for _, tc := range cases {
		if got := SplitSkills(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitSkills(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
