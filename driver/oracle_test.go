package driver

import "testing"

func TestOracleDriver(t *testing.T) {
	driver := OracleDriver{}
	translator := driver.Translator()
	if translator.Translate("#{foo}") != ":1" {
		t.Fatal("failed to translate")
	}
	if translator.Translate("#{bar}") != ":2" {
		t.Fatal("failed to translate")
	}
}
