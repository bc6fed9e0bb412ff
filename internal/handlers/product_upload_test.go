package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequest_PicksLastValue(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("isActive", "false")
		_ = w.WriteField("isActive", "true")
		_ = w.WriteField("price", "199.99")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.IsActiveSet || !parsed.IsActive {
		t.Fatalf("expected isActive=true, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 199.99 {
		t.Fatalf("expected price=199.99, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_NormalizesCategory(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("category", " Bags ")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.CategorySet || parsed.Category != "bags" {
		t.Fatalf("expected category=bags, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_RejectsNegativePrice(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("price", "-10")
	})

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestParseMultipartProductRequest_RejectsBadImageExtension(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		part, _ := w.CreateFormFile("image", "malware.exe")
		_, _ = part.Write([]byte("not an image"))
	})

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for unsupported image type")
	}
}

func TestParseCheckoutRequest_MultipartWithItems(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Jane")
		_ = w.WriteField("email", "jane@x.com")
		_ = w.WriteField("phone", "0700000000")
		_ = w.WriteField("transactionCode", "TX123")
		_ = w.WriteField("items", `[{"productId":"6890f2a1b3c4d5e6f7a8b9c0","name":"Tote","price":12500,"quantity":1}]`)
		part, _ := w.CreateFormFile("screenshot", "proof.png")
		_, _ = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	req, screenshot, err := parseCheckoutRequest(c)
	if err != nil {
		t.Fatalf("parseCheckoutRequest returned error: %v", err)
	}
	if len(req.Items) != 1 || req.Items[0].Name != "Tote" {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
	if req.TransactionCode != "TX123" {
		t.Errorf("transactionCode = %q", req.TransactionCode)
	}
	if screenshot == nil || screenshot.Filename != "proof.png" {
		t.Fatalf("expected screenshot file header, got %+v", screenshot)
	}
}

func TestParseCheckoutRequest_MultipartWithoutItemsFails(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Jane")
	})

	if _, _, err := parseCheckoutRequest(c); err == nil {
		t.Fatal("expected error when items field is missing")
	}
}

func TestParseCheckoutRequest_ScreenshotOptional(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Jane")
		_ = w.WriteField("email", "jane@x.com")
		_ = w.WriteField("phone", "0700000000")
		_ = w.WriteField("items", `[{"productId":"6890f2a1b3c4d5e6f7a8b9c0","quantity":2,"price":10}]`)
	})

	req, screenshot, err := parseCheckoutRequest(c)
	if err != nil {
		t.Fatalf("parseCheckoutRequest returned error: %v", err)
	}
	if screenshot != nil {
		t.Fatal("expected nil screenshot when none uploaded")
	}
	if req.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
}
