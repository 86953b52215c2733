package gateway

import "testing"

func TestSignAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	sig := Sign(secret, "order_1", "pay_1")
	if len(sig) != 64 { // hex sha256
		t.Fatalf("signature length = %d, want 64", len(sig))
	}

	if !VerifySignature(secret, "order_1", "pay_1", sig) {
		t.Error("valid signature rejected")
	}

	t.Run("deterministic", func(t *testing.T) {
		if Sign(secret, "order_1", "pay_1") != sig {
			t.Error("same inputs produced a different signature")
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		bad := "0" + sig[1:]
		if bad == sig {
			bad = "1" + sig[1:]
		}
		if VerifySignature(secret, "order_1", "pay_1", bad) {
			t.Error("tampered signature accepted")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if VerifySignature([]byte("other-secret"), "order_1", "pay_1", sig) {
			t.Error("signature from another secret accepted")
		}
	})

	t.Run("ids are not interchangeable", func(t *testing.T) {
		if VerifySignature(secret, "pay_1", "order_1", sig) {
			t.Error("swapped ids accepted")
		}
	})

	t.Run("separator is part of the message", func(t *testing.T) {
		// "a|b|c" must not collide whether split as (a, b|c) or (a|b, c)
		if Sign(secret, "a", "b|c") == Sign(secret, "a|b", "c") {
			t.Error("ambiguous message framing")
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		if VerifySignature(secret, "order_1", "pay_1", "") {
			t.Error("empty signature accepted")
		}
	})
}
