package domain

import "testing"

func TestUser_CanAccessUser(t *testing.T) {
	admin := &User{ID: 1, Role: &Role{ID: 1, Name: RoleAdmin}}
	alice := &User{ID: 2, Role: &Role{ID: 2, Name: RoleUser}}

	if !alice.CanAccessUser(2) {
		t.Fatalf("user should access own record")
	}
	if alice.CanAccessUser(3) {
		t.Fatalf("user should not access another user's record")
	}
	if !admin.CanAccessUser(2) {
		t.Fatalf("admin should access any record")
	}
	if !admin.CanAccessUser(1) {
		t.Fatalf("admin should access own record")
	}
}

func TestUser_IsAdmin_NilRole(t *testing.T) {
	u := &User{ID: 5}
	if u.IsAdmin() {
		t.Fatalf("user without role must not be admin")
	}
	if u.CanAccessUser(6) {
		t.Fatalf("user without role must not access other records")
	}
}
