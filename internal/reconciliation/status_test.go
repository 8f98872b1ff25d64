package reconciliation

import "testing"

func TestParseMismatchStatus(t *testing.T) {
	cases := []struct {
		status string
		want   MismatchKind
	}{
		{"Amount Mismatch, Quantity", KindBothMismatch},
		{"quantity and AMOUNT MISMATCH", KindBothMismatch},
		{"Amount Mismatch", KindAmountMismatch},
		{"amount mismatch", KindAmountMismatch},
		{"Quantity Mismatch", KindQuantityMismatch},
		{"wrong quantity", KindQuantityMismatch},
		{"Successful Process", KindOk},
		{"successful process", KindOk},
		{"Tax Code Mismatch", KindOther},
		{"", KindOther},
	}

	for _, tc := range cases {
		if got := ParseMismatchStatus(tc.status); got != tc.want {
			t.Errorf("ParseMismatchStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestClassifyEditableFields(t *testing.T) {
	cases := []struct {
		status       string
		wantQuantity bool
		wantAmount   bool
	}{
		{"Amount Mismatch, Quantity", true, true},
		{"AMOUNT MISMATCH and quantity off", true, true},
		{"Amount Mismatch", false, true},
		{"Quantity Mismatch", true, false},
		{"Successful Process", false, false},
		{"Tax Code Mismatch", false, false},
	}

	for _, tc := range cases {
		fields := ClassifyEditableFields(tc.status)
		if !fields.Comment {
			t.Errorf("ClassifyEditableFields(%q): comment must always be editable", tc.status)
		}
		if fields.Quantity != tc.wantQuantity || fields.Amount != tc.wantAmount {
			t.Errorf("ClassifyEditableFields(%q) = %+v, want quantity=%v amount=%v",
				tc.status, fields, tc.wantQuantity, tc.wantAmount)
		}
	}
}
