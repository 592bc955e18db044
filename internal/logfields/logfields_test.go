package logfields

import "testing"

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		key     string
		val     string
	}{
		{"DeviceID", KeyDeviceID, "b8:1", DeviceID("b8:1").Key, DeviceID("b8:1").Value.String()},
		{"Action", KeyAction, "add", Action("add").Key, Action("add").Value.String()},
		{"DevPath", KeyDevPath, "/devices/x", DevPath("/devices/x").Key, DevPath("/devices/x").Value.String()},
		{"Tag", KeyTag, "seat", Tag("seat").Key, Tag("seat").Value.String()},
		{"Feature", KeyFeature, "f", Feature("f").Key, Feature("f").Value.String()},
		{"Flavor", KeyFlavor, "simple", Flavor("simple").Key, Flavor("simple").Value.String()},
	}
	for _, tc := range cases {
		if tc.key != tc.attrKey {
			t.Errorf("%s: key = %q, want %q", tc.name, tc.key, tc.attrKey)
		}
		if tc.val != tc.attrVal {
			t.Errorf("%s: value = %q, want %q", tc.name, tc.val, tc.attrVal)
		}
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("nil error value = %q, want empty", got)
	}
}
