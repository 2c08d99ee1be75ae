package request

import "testing"

func TestProcessPaymentRequest_ToPaymentLinkRequest(t *testing.T) {
	r := ProcessPaymentRequest{
		ProductReference: " prod-1 ",
		Amount:           50000,
		Email:            " buyer@test.com ",
		FullName:         " Buyer Test ",
		CellPhone:        "3001234567",
		Currency:         " COP ",
	}

	got := r.ToPaymentLinkRequest()
	if got.ProductReference != "prod-1" || got.Email != "buyer@test.com" || got.FullName != "Buyer Test" {
		t.Fatalf("expected trimmed fields, got %+v", got)
	}
	if got.Currency != "COP" {
		t.Fatalf("expected trimmed currency, got %q", got.Currency)
	}
	if got.Amount != 50000 || got.CellPhone != "3001234567" {
		t.Fatalf("unexpected passthrough fields: %+v", got)
	}
}

func TestWebhookConfirmationRequest_ToConfirmation(t *testing.T) {
	r := WebhookConfirmationRequest{
		NoveltyUUID:       "novelty-1",
		NoveltyDetailUUID: "ref-1",
		TransactionResult: "PAID",
		Checksum:          "abc",
	}

	got := r.ToConfirmation()
	if got.NoveltyUUID != "novelty-1" || got.NoveltyDetailUUID != "ref-1" {
		t.Fatalf("unexpected identifiers: %+v", got)
	}
	if got.TransactionResult != "PAID" || got.Checksum != "abc" {
		t.Fatalf("unexpected fields: %+v", got)
	}
}
