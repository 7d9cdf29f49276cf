package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUPCVariants(t *testing.T) {
	tests := []struct {
		code string
		want []string
	}{
		{"036000291452", []string{"036000291452", "36000291452"}},
		{"12345678", []string{"12345678", "000012345678"}},
		{"", nil},
		{"no digits", nil},
	}
	for _, tt := range tests {
		got := upcVariants(tt.code)
		if len(got) != len(tt.want) {
			t.Errorf("upcVariants(%q) = %v, want %v", tt.code, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("upcVariants(%q)[%d] = %q, want %q", tt.code, i, got[i], tt.want[i])
			}
		}
	}
}

func TestProductLookup_PrimaryHit(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("upc") != "036000291452" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"items":[{"title":"Saline Nasal Spray","brand":"CareAid","category":"Health","images":["https://img.example/1.jpg"]}]}`))
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback queried despite primary hit")
	}))
	defer fallback.Close()

	c := NewProductClient(primary.URL, fallback.URL)
	p, found, err := c.Lookup(context.Background(), "036000291452")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if p.Title != "Saline Nasal Spray" || p.Source != "upcitemdb" {
		t.Errorf("product: got %+v", p)
	}
	if p.ImageURL != "https://img.example/1.jpg" {
		t.Errorf("ImageURL: got %q", p.ImageURL)
	}
}

func TestProductLookup_FallbackHit(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/036000291452.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"status":1,"product":{"product_name":"Corn Flakes","brands":"Acme","categories":"Cereal","image_url":"https://img.example/2.jpg"}}`))
	}))
	defer fallback.Close()

	c := NewProductClient(primary.URL, fallback.URL)
	p, found, err := c.Lookup(context.Background(), "036000291452")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if p.Title != "Corn Flakes" || p.Source != "openfoodfacts" {
		t.Errorf("product: got %+v", p)
	}
}

func TestProductLookup_ExhaustedIsNotFoundNotError(t *testing.T) {
	miss := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer miss.Close()

	c := NewProductClient(miss.URL, miss.URL)
	p, found, err := c.Lookup(context.Background(), "036000291452")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found || p != nil {
		t.Errorf("got (%+v, %v), want (nil, false)", p, found)
	}
}
