package immo

import (
	"testing"

	"github.com/etnz/immo/date"
)

func TestRevalue(t *testing.T) {
	index := (&IndexSeries{ID: "010567059"}).
		Append(date.MustParseMonth("2020-01"), 100).
		Append(date.MustParseMonth("2022-01"), 110).
		Append(date.MustParseMonth("2024-01"), 125)

	properties := []Property{
		{ID: "revalued", AcquisitionPrice: A(200000), AcquiredAt: date.New(2020, 6, 15)},
		{ID: "valued", AcquisitionPrice: A(150000), CurrentValue: A(170000).Ptr(), AcquiredAt: date.New(2020, 1, 1)},
		{ID: "undated", AcquisitionPrice: A(90000)},
		{ID: "too-old", AcquisitionPrice: A(90000), AcquiredAt: date.New(2019, 3, 1)},
	}
	got, diags := Revalue(properties, index, date.MustParseMonth("2024-06"))

	testCases := []struct {
		id   string
		want Amount
	}{
		{"revalued", A(250000)},
		{"valued", A(170000)},
		{"undated", A(90000)},
		{"too-old", A(90000)},
	}
	for i, tc := range testCases {
		if got[i].ID != tc.id || !got[i].Value().Equal(tc.want) {
			t.Errorf("Revalue()[%d] = %s %v, want %s %v", i, got[i].ID, got[i].Value(), tc.id, tc.want)
		}
	}
	if len(diags) != 2 || diags[0].ID != "undated" || diags[1].ID != "too-old" {
		t.Errorf("diagnostics = %v, want undated and too-old", diags)
	}
	if properties[0].CurrentValue != nil {
		t.Errorf("Revalue() modified its input")
	}
}

func TestRevalue_NoIndex(t *testing.T) {
	properties := []Property{{ID: "p", AcquisitionPrice: A(1000), AcquiredAt: date.New(2020, 1, 1)}}
	got, diags := Revalue(properties, &IndexSeries{}, date.MustParseMonth("2024-01"))
	if len(diags) != 1 || got[0].CurrentValue != nil {
		t.Errorf("Revalue() = %v, %v want unchanged with one diagnostic", got, diags)
	}
}
