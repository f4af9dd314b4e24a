package works

import (
	"strings"
	"testing"

	"artifolio/internal/domain/works"
	"artifolio/internal/validation"
)

func validInput() ArtworkInput {
	return ArtworkInput{
		Title:      "Sunrise over dunes",
		FinalImage: "artworks/final/a.png",
		StartDate:  "2024-01-10",
		EndDate:    "2024-02-01",
	}
}

func formErrors(t *testing.T, err error) *validation.FormErrors {
	t.Helper()
	fe, ok := validation.AsFormErrors(err)
	if !ok {
		t.Fatalf("expected form errors, got %v", err)
	}
	return fe
}

func TestValidateArtworkAcceptsMinimalInput(t *testing.T) {
	if err := ValidateArtwork(validInput(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateArtworkRequiresTitleAndImageOnCreate(t *testing.T) {
	in := validInput()
	in.Title = "   "
	in.FinalImage = ""

	fe := formErrors(t, ValidateArtwork(in, true))
	if len(fe.Fields["title"]) == 0 {
		t.Errorf("expected title error, got %+v", fe.Fields)
	}
	if len(fe.Fields["final_image"]) == 0 {
		t.Errorf("expected final_image error, got %+v", fe.Fields)
	}

	// updates keep the stored image
	in.Title = "ok"
	if err := ValidateArtwork(in, false); err != nil {
		t.Fatalf("update without image should validate: %v", err)
	}
}

func TestValidateArtworkTitleLength(t *testing.T) {
	in := validInput()
	in.Title = strings.Repeat("a", 101)
	fe := formErrors(t, ValidateArtwork(in, true))
	if got := fe.Fields["title"]; len(got) != 1 || !strings.Contains(got[0], "100") {
		t.Fatalf("unexpected title errors: %v", got)
	}

	in.Title = strings.Repeat("é", 100)
	if err := ValidateArtwork(in, true); err != nil {
		t.Fatalf("100 characters should be accepted: %v", err)
	}
}

func TestValidateArtworkRejectsStartAfterEnd(t *testing.T) {
	in := validInput()
	in.StartDate = "2024-03-01"
	in.EndDate = "2024-02-01"

	fe := formErrors(t, ValidateArtwork(in, true))
	if len(fe.NonField) != 1 || fe.NonField[0] != "Start date cannot be after end date." {
		t.Fatalf("unexpected non-field errors: %v", fe.NonField)
	}

	in.EndDate = in.StartDate
	if err := ValidateArtwork(in, true); err != nil {
		t.Fatalf("equal dates should validate: %v", err)
	}
}

func TestValidateArtworkDatesAndTechnique(t *testing.T) {
	in := validInput()
	in.StartDate = "10/01/2024"
	in.Technique = "XYZ"

	fe := formErrors(t, ValidateArtwork(in, true))
	if len(fe.Fields["start_date"]) == 0 {
		t.Errorf("expected start_date error, got %+v", fe.Fields)
	}
	if len(fe.Fields["technique"]) == 0 {
		t.Errorf("expected technique error, got %+v", fe.Fields)
	}
}

func TestCleanArtworkDefaults(t *testing.T) {
	in := validInput()
	in.Description = "  "
	in.StartDate = ""
	in.EndDate = ""

	out, ops, errs := cleanArtwork(in, true)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out.technique != works.TechniqueSketch {
		t.Errorf("technique = %q, want %q", out.technique, works.TechniqueSketch)
	}
	if out.description != nil {
		t.Errorf("blank description should be nil")
	}
	if out.startDate != nil || out.endDate != nil {
		t.Errorf("blank dates should be nil")
	}
	if len(ops) != 0 {
		t.Errorf("expected no photo ops, got %d", len(ops))
	}
}

func TestCleanPhotoLines(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{
		{},                                 // blank extra slot
		{Image: "p1.png"},                  // new, order defaults
		{Image: "p2.png", Order: "4"},      // new
		{ID: 7, Order: "2"},                // update
		{ID: 8, Delete: true},              // delete
		{Delete: true, Image: "never.png"}, // unsaved and deleted
	}

	_, ops, errs := cleanArtwork(in, false)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4: %+v", len(ops), ops)
	}
	if ops[0].kind != photoCreate || ops[0].order != works.DefaultPhotoOrder {
		t.Errorf("op 0 = %+v", ops[0])
	}
	if ops[1].kind != photoCreate || ops[1].order != 4 {
		t.Errorf("op 1 = %+v", ops[1])
	}
	if ops[2].kind != photoUpdate || ops[2].id != 7 || ops[2].order != 2 {
		t.Errorf("op 2 = %+v", ops[2])
	}
	if ops[3].kind != photoDelete || ops[3].id != 8 {
		t.Errorf("op 3 = %+v", ops[3])
	}
}

func TestCleanPhotoLinesErrors(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{
		{Order: "2"},        // new without image
		{ID: 3, Order: "x"}, // bad order
		{ID: 3, Order: "1"}, // duplicate id
	}

	fe := formErrors(t, ValidateArtwork(in, false))
	if len(fe.Items[0]["image"]) == 0 {
		t.Errorf("expected image error on item 0: %+v", fe.Items)
	}
	if len(fe.Items[1]["order"]) == 0 {
		t.Errorf("expected order error on item 1: %+v", fe.Items)
	}
	if len(fe.Items[2]["id"]) == 0 {
		t.Errorf("expected duplicate id error on item 2: %+v", fe.Items)
	}
}

func TestCleanPhotoLinesSkipsUntouchedSlots(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{{Order: "1"}, {Order: " 1 "}, {}}

	_, ops, errs := cleanArtwork(in, true)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(ops) != 0 {
		t.Fatalf("got ops %+v, want none", ops)
	}
}

func TestCleanPhotoLinesRequiresOrderOnUpdate(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{{ID: 4, Order: "  "}}

	fe := formErrors(t, ValidateArtwork(in, false))
	if got := fe.Items[0]["order"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("order errors = %v", got)
	}
}

func TestCleanPhotoLinesLimitsNewItems(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{
		{Image: "1.png"}, {Image: "2.png"}, {Image: "3.png"}, {Image: "4.png"},
	}
	fe := formErrors(t, ValidateArtwork(in, true))
	if len(fe.NonField) != 1 {
		t.Fatalf("expected one non-field error, got %v", fe.NonField)
	}
}

func TestCleanPhotoLinesRejectsExistingIDsOnCreate(t *testing.T) {
	in := validInput()
	in.Photos = []PhotoLineItem{{ID: 5, Order: "1"}}
	fe := formErrors(t, ValidateArtwork(in, true))
	if len(fe.Items[0]["id"]) == 0 {
		t.Fatalf("expected id error, got %+v", fe.Items)
	}
}

func TestArtworkFilterCriteria(t *testing.T) {
	tests := []struct {
		name string
		in   ArtworkFilter
		want Criteria
	}{
		{"empty", ArtworkFilter{}, Criteria{}},
		{"all valid", ArtworkFilter{Title: " sun ", Technique: "OLE", StartMonth: "5", StartYear: "2024"},
			Criteria{Title: "sun", Technique: works.TechniqueOil, StartMonth: 5, StartYear: 2024}},
		{"month out of range", ArtworkFilter{StartMonth: "13"}, Criteria{}},
		{"month zero", ArtworkFilter{StartMonth: "0"}, Criteria{}},
		{"non numeric", ArtworkFilter{StartMonth: "may", StartYear: "twenty"}, Criteria{}},
		{"year out of range", ArtworkFilter{StartYear: "10000"}, Criteria{}},
		{"unknown technique", ArtworkFilter{Technique: "XYZ"}, Criteria{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Criteria(); got != tt.want {
				t.Fatalf("Criteria() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
