package model

import (
	"strings"
	"testing"
)

func TestCatalogHasFourStandardContainers(t *testing.T) {
	specs := ContainerSpecs()
	if len(specs) != 4 {
		t.Fatalf("expected 4 catalog entries, got %d", len(specs))
	}

	want := map[string]ContainerSpec{
		"20gp": {ID: "20gp", Type: ContainerGP20, Length: 590, Width: 235, Height: 239, MaxWeight: 28000},
		"20hq": {ID: "20hq", Type: ContainerHQ20, Length: 590, Width: 235, Height: 269, MaxWeight: 28000},
		"40gp": {ID: "40gp", Type: ContainerGP40, Length: 1203, Width: 235, Height: 239, MaxWeight: 26000},
		"40hq": {ID: "40hq", Type: ContainerHQ40, Length: 1203, Width: 235, Height: 269, MaxWeight: 26000},
	}
	for _, s := range specs {
		if w, ok := want[s.ID]; !ok || w != s {
			t.Errorf("unexpected catalog entry %+v", s)
		}
	}
}

func TestContainerSpecsReturnsCopy(t *testing.T) {
	specs := ContainerSpecs()
	specs[0].MaxWeight = 1

	again, _ := GetContainer("20gp")
	if again.MaxWeight != 28000 {
		t.Errorf("catalog must be read-only, got max weight %.0f", again.MaxWeight)
	}
}

func TestGetContainer(t *testing.T) {
	c, ok := GetContainer(" 40HQ ")
	if !ok {
		t.Fatal("expected 40hq to be found case-insensitively")
	}
	if c.Type != ContainerHQ40 {
		t.Errorf("expected type 40HQ, got %s", c.Type)
	}

	if _, ok := GetContainer("45hc"); ok {
		t.Error("unexpected catalog hit for 45hc")
	}

	byType, ok := GetContainerByType(ContainerGP20)
	if !ok || byType.ID != "20gp" {
		t.Errorf("expected 20gp for type 20GP, got %+v", byType)
	}
}

func TestParseContainerSelection(t *testing.T) {
	specs, err := ParseContainerSelection("40hq, 20GP,,20gp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	if strings.Join(ids, ",") != "40hq,20gp,20gp" {
		t.Errorf("selection order must be preserved, got %v", ids)
	}

	_, err = ParseContainerSelection("20gp,53ft")
	if err == nil || !strings.Contains(err.Error(), "53ft") {
		t.Errorf("expected error naming the unknown id, got %v", err)
	}
}

func TestOrientedDimensions(t *testing.T) {
	d := Dimensions{Length: 100, Width: 80, Height: 60}

	if got := d.Oriented(OrientationLengthWidth); got != d {
		t.Errorf("length-width must not rotate, got %+v", got)
	}
	rot := d.Oriented(OrientationWidthLength)
	if rot.Length != 80 || rot.Width != 100 || rot.Height != 60 {
		t.Errorf("width-length should swap length and width only, got %+v", rot)
	}
	if rot.Volume() != d.Volume() {
		t.Errorf("rotation must preserve volume")
	}
}

func TestOrientationRotated(t *testing.T) {
	if OrientationLengthWidth.Rotated() {
		t.Error("length-width is the unrotated orientation")
	}
	if !OrientationWidthLength.Rotated() {
		t.Error("width-length swaps length and width")
	}
	for _, o := range Orientations {
		d := Dimensions{Length: 100, Width: 80, Height: 60}
		if swapped := d.Oriented(o) != d; swapped != o.Rotated() {
			t.Errorf("%s: Rotated() = %v but Oriented swapped = %v", o, o.Rotated(), swapped)
		}
	}
}

func TestNewUnitItem(t *testing.T) {
	item := CargoItem{ID: "box", Name: "Box", Length: 10, Width: 20, Height: 30, Weight: 5, Quantity: 4, Stackable: true}
	u := NewUnitItem(item, 2)

	if u.ID != "box-2" {
		t.Errorf("expected derived id box-2, got %s", u.ID)
	}
	if u.CargoID != "box" || u.Index != 2 {
		t.Errorf("unit should remember its source, got cargo=%s index=%d", u.CargoID, u.Index)
	}
	if u.Quantity != 1 {
		t.Errorf("unit quantity must be 1, got %d", u.Quantity)
	}
	if u.Name != "Box" || u.Weight != 5 || !u.Stackable || u.Volume() != 6000 {
		t.Errorf("unit should keep the remaining attributes, got %+v", u)
	}
	if item.Quantity != 4 {
		t.Error("source item must not be modified")
	}
}

func TestCargoItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    CargoItem
		wantErr bool
	}{
		{"valid", NewCargoItem("A", 100, 80, 60, 50, 10), false},
		{"zero length", NewCargoItem("B", 0, 80, 60, 50, 1), true},
		{"negative height", NewCargoItem("C", 10, 80, -1, 50, 1), true},
		{"zero weight", NewCargoItem("D", 10, 80, 60, 0, 1), true},
		{"zero quantity", NewCargoItem("E", 10, 80, 60, 50, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCargoItemGeneratesIDs(t *testing.T) {
	a := NewCargoItem("A", 1, 1, 1, 1, 1)
	b := NewCargoItem("A", 1, 1, 1, 1, 1)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if len(a.ID) != 8 {
		t.Errorf("expected 8-character id, got %q", a.ID)
	}
}

func TestLoadingPlanTitle(t *testing.T) {
	c, _ := GetContainer("40hq")
	plan := LoadingPlan{Container: c, Instance: 2}
	if plan.Title() != "40HQ #2" {
		t.Errorf("unexpected title %q", plan.Title())
	}
	if plan.ContainerID() != "40hq" || plan.ContainerType() != ContainerHQ40 {
		t.Errorf("unexpected container identity %s/%s", plan.ContainerID(), plan.ContainerType())
	}
}

func TestOptimizationResultCounts(t *testing.T) {
	r := OptimizationResult{
		Plans: []LoadingPlan{
			{Items: make([]PlacedItem, 3), UsedWeight: 30},
			{Items: make([]PlacedItem, 2), UsedWeight: 12.5},
		},
		UnplacedItems: []CargoItem{{Quantity: 4}, {Quantity: 1}},
	}
	if r.PlacedUnits() != 5 {
		t.Errorf("expected 5 placed units, got %d", r.PlacedUnits())
	}
	if r.UnplacedUnits() != 5 {
		t.Errorf("expected 5 unplaced units, got %d", r.UnplacedUnits())
	}
	if r.TotalWeight() != 42.5 {
		t.Errorf("expected 42.5 kg, got %f", r.TotalWeight())
	}
}

func TestPercent(t *testing.T) {
	if Percent(1, 4) != 25 {
		t.Errorf("expected 25, got %f", Percent(1, 4))
	}
	if Percent(1, 0) != 0 {
		t.Error("expected 0 for zero whole")
	}
}

func TestNewProjectUsesDefaultSelection(t *testing.T) {
	p := NewProject("Shipment")
	specs, err := p.SelectedContainers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 || specs[0].ID != "20gp" || specs[1].ID != "40hq" {
		t.Errorf("unexpected default selection %+v", specs)
	}
	if p.Items == nil {
		t.Error("Items should not be nil")
	}
}
