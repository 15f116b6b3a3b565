package ua

import "testing"

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/125.0.6422.60 Safari/537.36"

const iphone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 " +
	"(KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"

func TestParseDesktop(t *testing.T) {
	info := Parse(chromeMac)
	if info.Device != "Desktop" || info.IsBot || info.Mobile() {
		t.Fatalf("unexpected %+v", info)
	}
	if info.Raw != chromeMac {
		t.Fatal("raw header not kept")
	}
}

func TestParseMobileCached(t *testing.T) {
	first := Parse(iphone)
	if !first.Mobile() {
		t.Fatalf("iPhone should be mobile: %+v", first)
	}
	if _, ok := parsed.Get(iphone); !ok {
		t.Fatal("parse result not cached")
	}
	if Parse(iphone) != first {
		t.Fatal("cached parse differs")
	}
}

func TestParseBot(t *testing.T) {
	info := Parse("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	if !info.IsBot {
		t.Fatalf("Googlebot not flagged: %+v", info)
	}
}
