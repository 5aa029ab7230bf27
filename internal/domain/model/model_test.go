package model

import "testing"

func TestUserPatchApply(t *testing.T) {
	login := "Trinity"
	age := 0
	u := User{ID: "1", Login: "Neo", Age: 30, Password: "aB1"}

	UserPatch{Login: &login, Age: &age}.Apply(&u)

	if u.Login != "Trinity" || u.Age != 0 {
		t.Fatalf("patch not applied: %+v", u)
	}
	if u.Password != "aB1" || u.ID != "1" {
		t.Fatalf("untouched fields changed: %+v", u)
	}
}

func TestUserPatchEmpty(t *testing.T) {
	if !(UserPatch{}).Empty() {
		t.Fatal("expected zero patch to be empty")
	}
	pwd := "xY9"
	if (UserPatch{Password: &pwd}).Empty() {
		t.Fatal("expected patch with password to be non-empty")
	}
}
