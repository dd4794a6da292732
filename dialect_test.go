package pdooci

import (
	"sort"
	"testing"
)

func TestRegisterGetAndUnregisterDialect(t *testing.T) {
	mock, ok := GetDialect("mock")
	if !ok {
		t.Fatal("Expected to find dialect 'mock' registered, but it is missing")
	}
	RegisterDialect("dialect_for_TestUnregisterDialect", mock)

	// Check the test's dialect is there.
	testDialect, ok := GetDialect("dialect_for_TestUnregisterDialect")
	if !ok {
		t.Error("Expected to find the test dialect registered, but it is missing")
	}
	if testDialect != mock {
		t.Error("Unexpected dialect returned by GetDialect")
	}

	drivers := AvailableDrivers()
	if !sort.StringsAreSorted(drivers) {
		t.Errorf("Expected sorted drivers, got %v", drivers)
	}

	UnregisterDialect("dialect_for_TestUnregisterDialect")

	if _, ok = GetDialect("dialect_for_TestUnregisterDialect"); ok {
		t.Error("Expected the test dialect to be unregistered, but it was still found")
	}
	for _, name := range AvailableDrivers() {
		if name == "dialect_for_TestUnregisterDialect" {
			t.Error("Unregistered dialect still listed by AvailableDrivers")
		}
	}
}
