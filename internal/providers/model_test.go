package providers

import "testing"

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		p    Provider
		want bool
	}{
		{"active and available", Provider{IsActive: true, IsAvailable: true, Services: []string{"plomberie"}}, true},
		{"deactivated is never available", Provider{IsActive: false, IsAvailable: true, Services: []string{"plomberie"}}, false},
		{"unavailable", Provider{IsActive: true, IsAvailable: false, Services: []string{"plomberie"}}, false},
		{"no services", Provider{IsActive: true, IsAvailable: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Eligible(); got != tt.want {
				t.Fatalf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffersService(t *testing.T) {
	p := Provider{Services: []string{"Plomberie", "électricité"}}
	if !p.OffersService("plomberie") {
		t.Error("expected case-insensitive service match")
	}
	if !p.OffersService(" électricité ") {
		t.Error("expected trimmed service match")
	}
	if p.OffersService("électroménager") {
		t.Error("unexpected match for unlisted service")
	}
}

func TestCoversArea(t *testing.T) {
	p := Provider{CoverageAreas: []string{"Bonamoussadi", "Makepe"}}
	if !p.CoversArea("Carrefour Kotto, Bonamoussadi") {
		t.Error("expected substring area match")
	}
	if p.CoversArea("Bonaberi") {
		t.Error("unexpected match outside coverage")
	}

	cityWide := Provider{}
	if !cityWide.CoversArea("Ndokoti") {
		t.Error("empty coverage should mean city-wide")
	}
}

func TestContactAddress(t *testing.T) {
	p := Provider{Phone: "+237655000001", WhatsAppID: "+237699000001"}
	if got := p.ContactAddress(); got != "+237699000001" {
		t.Fatalf("ContactAddress() = %q, want whatsapp id", got)
	}
	p.WhatsAppID = ""
	if got := p.ContactAddress(); got != "+237655000001" {
		t.Fatalf("ContactAddress() = %q, want phone", got)
	}
}

func TestResponseBucket(t *testing.T) {
	if got := (&Provider{ResponseTimeAvg: 10}).ResponseBucket(); got != "répond en moins de 15 min" {
		t.Fatalf("unexpected bucket: %q", got)
	}
	if got := (&Provider{}).ResponseBucket(); got != "délai inconnu" {
		t.Fatalf("unexpected bucket for zero average: %q", got)
	}
}
