package hours

import (
	"reflect"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	got := Parse("")
	if got == nil || len(got) != 0 {
		t.Fatalf("Parse(\"\") = %#v, want empty non-nil slice", got)
	}
	if got := Parse(";;"); len(got) != 0 {
		t.Fatalf("Parse(\";;\") = %#v, want empty", got)
	}
}

func TestParseWeekdays(t *testing.T) {
	got := Parse("1|2-09:00-17:00")
	want := []Entry{{Days: "Monday, Tuesday", Start: "09:00", End: "17:00", Open: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseClosed(t *testing.T) {
	got := Parse("0-Closed-")
	want := []Entry{{Days: "Sunday", Start: "Closed", End: "", Open: false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseFullWeek(t *testing.T) {
	got := Parse("1|2|3|4|5-09:00-17:30;6-09:00-13:00;7-closed-;0")
	want := []Entry{
		{Days: "Monday, Tuesday, Wednesday, Thursday, Friday", Start: "09:00", End: "17:30", Open: true},
		{Days: "Saturday", Start: "09:00", End: "13:00", Open: true},
		{Days: "Sunday", Start: "closed", End: "", Open: false},
		{Days: "Sunday", Start: "Closed", End: "", Open: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseEdgeEntries(t *testing.T) {
	got := Parse("-09:00-17:00;9-10:00-11:00;|-08:00-09:00;3|-CLOSED-")
	want := []Entry{
		{Days: "9", Start: "10:00", End: "11:00", Open: true},
		{Days: "Unknown", Start: "08:00", End: "09:00", Open: true},
		// Only "Closed" and "closed" count as closed.
		{Days: "Wednesday", Start: "CLOSED", End: "", Open: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
