package model

import (
	"strings"
	"testing"
)

func TestSetAndCheckPassword(t *testing.T) {
	var u UserModel
	if err := u.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if u.PasswordHash == "" {
		t.Fatal("hash must be stored")
	}
	if strings.Contains(u.PasswordHash, "correct horse battery") {
		t.Fatal("plaintext must never appear in the stored hash")
	}

	if !u.CheckPassword("correct horse battery") {
		t.Error("correct password must verify")
	}
	if u.CheckPassword("wrong password") {
		t.Error("wrong password must not verify")
	}
	if u.CheckPassword("") {
		t.Error("empty password must not verify")
	}
}

func TestSetPasswordProducesFreshSalt(t *testing.T) {
	var a, b UserModel
	if err := a.SetPassword("same-secret"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPassword("same-secret"); err != nil {
		t.Fatal(err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Error("two derivations of the same secret must not collide (salting)")
	}
}
