package driver

import "testing"

func TestGetRegisteredDrivers(t *testing.T) {
	for _, name := range []string{"mysql", "postgres", "sqlite3", "oracle"} {
		if _, err := Get(name); err != nil {
			t.Errorf("expected driver %s to be registered: %v", name, err)
		}
	}
}

func TestGetUnknownDriver(t *testing.T) {
	if _, err := Get("nosuchdriver"); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()
	Register("mysql", &MySQLDriver{})
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil driver")
		}
	}()
	Register("other", nil)
}
