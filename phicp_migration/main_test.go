package main

import (
	"reflect"
	"testing"
)

func TestChannels(t *testing.T) {
	want := []string{"1p0n_1p0n", "lept_1p0n", "1p1n_1p1n", "1p1n_1pXn", "1p0n_1p1n"}
	if got := channels(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v got %v", want, got)
	}
}
