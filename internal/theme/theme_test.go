package theme

import "testing"

func TestSetAndList(t *testing.T) {
	defer func() { Current = Default }()

	names := List()
	if len(names) != 5 || names[0] != "default" {
		t.Fatalf("List = %v", names)
	}
	if !Set("nord") || Current.Name != "nord" || Current.Error != "#BF616A" {
		t.Errorf("Set(nord) gave %+v", Current)
	}
	if Set("nope") {
		t.Error("unknown theme accepted")
	}
}
