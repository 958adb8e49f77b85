package handlers

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"
	"testing"
)

func TestQRGenerate_ReturnsBase64PNG(t *testing.T) {
	t.Parallel()

	fx := newAPIForTest(t, fixtureOpts{})

	rec := fx.do(t, http.MethodPost, "/api/v1/qr/generate", map[string]any{
		"data": "https://example.com",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["format"] != "png" {
		t.Fatalf("format = %v", data["format"])
	}

	raw, err := base64.StdEncoding.DecodeString(data["qr_code"].(string))
	if err != nil {
		t.Fatalf("qr_code is not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("image is not a PNG: %v", err)
	}
}

func TestQRGenerate_CustomOptions(t *testing.T) {
	t.Parallel()

	fx := newAPIForTest(t, fixtureOpts{})

	rec := fx.do(t, http.MethodPost, "/api/v1/qr/generate", map[string]any{
		"data":       "hello",
		"size":       4,
		"fill_color": "#1A2B3C",
		"back_color": "yellow",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQRGenerate_MissingData_422(t *testing.T) {
	t.Parallel()

	fx := newAPIForTest(t, fixtureOpts{})

	rec := fx.do(t, http.MethodPost, "/api/v1/qr/generate", map[string]any{}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errCode(t, rec); code != "missing_field" {
		t.Fatalf("code = %q", code)
	}
}

func TestQRGenerate_SizeOutOfRange_422(t *testing.T) {
	t.Parallel()

	fx := newAPIForTest(t, fixtureOpts{})

	rec := fx.do(t, http.MethodPost, "/api/v1/qr/generate", map[string]any{
		"data": "x", "size": 99,
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQRGenerate_BadColor_422(t *testing.T) {
	t.Parallel()

	fx := newAPIForTest(t, fixtureOpts{})

	rec := fx.do(t, http.MethodPost, "/api/v1/qr/generate", map[string]any{
		"data": "x", "fill_color": "chartreuse",
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if code := errCode(t, rec); code != "invalid_field" {
		t.Fatalf("code = %q", code)
	}
}
