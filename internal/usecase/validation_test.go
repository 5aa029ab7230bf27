package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	testhelpers "github.com/polkiloo/usersvc/internal/test"
)

func fieldMessages(t *testing.T, err error) []string {
	t.Helper()
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msgs := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

func TestValidatePassword(t *testing.T) {
	for _, pwd := range []string{"aB1", "g4G", "Passw0rd"} {
		if !ValidatePassword(pwd) {
			t.Fatalf("expected %q to be accepted", pwd)
		}
	}
	for _, pwd := range []string{"", "abc", "ABC1", "abc1", "aB", "aB1!", "пА1"} {
		if ValidatePassword(pwd) {
			t.Fatalf("expected %q to be rejected", pwd)
		}
	}
}

func TestValidateUserAcceptsValidPayload(t *testing.T) {
	user, err := ValidateUser([]byte(`{"login":"Neo","age":30,"password":"aB1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "Neo" || user.Age != 30 || user.Password != "aB1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.ID != "" || user.IsDeleted {
		t.Fatalf("expected id and deleted flag untouched, got %+v", user)
	}
}

func TestValidateUserAcceptsZeroAge(t *testing.T) {
	user, err := ValidateUser([]byte(`{"login":"Olaf","age":0,"password":"a2A"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Age != 0 {
		t.Fatalf("expected age 0, got %d", user.Age)
	}
}

func TestValidateUserAcceptsWholeNumberNotation(t *testing.T) {
	cases := map[string]int{"30": 30, "30.0": 30, "3e1": 30, "300e-1": 30, "0.0": 0, "-0": 0}
	for age, want := range cases {
		user, err := ValidateUser([]byte(`{"login":"Neo","age":` + age + `,"password":"aB1"}`))
		if err != nil {
			t.Fatalf("age %s: unexpected error: %v", age, err)
		}
		if user.Age != want {
			t.Fatalf("age %s: expected %d, got %d", age, want, user.Age)
		}
	}

	patch, err := ValidateUserPatch([]byte(`{"age":4.0}`))
	if err != nil {
		t.Fatalf("unexpected patch error: %v", err)
	}
	if patch.Age == nil || *patch.Age != 4 {
		t.Fatalf("expected patch age 4, got %v", patch.Age)
	}
}

func TestValidateUserCollectsAllErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []string
	}{
		{
			name:    "empty body",
			payload: ``,
			want:    []string{`"login" is required`, `"age" is required`, `"password" is required`},
		},
		{
			name:    "empty object",
			payload: `{}`,
			want:    []string{`"login" is required`, `"age" is required`, `"password" is required`},
		},
		{
			name:    "constraints",
			payload: `{"login":"","age":-1,"password":"weak"}`,
			want: []string{
				`"login" is not allowed to be empty`,
				`"age" must be greater than or equal to 0`,
				`"password" must contain only letters and digits, including an uppercase letter, a lowercase letter and a digit`,
			},
		},
		{
			name:    "types",
			payload: `{"login":5,"age":"30","password":true}`,
			want:    []string{`"login" must be a string`, `"age" must be a number`, `"password" must be a string`},
		},
		{
			name:    "fractional age",
			payload: `{"login":"Neo","age":30.5,"password":"aB1"}`,
			want:    []string{`"age" must be an integer`},
		},
		{
			name:    "negative whole float age",
			payload: `{"login":"Neo","age":-2.0,"password":"aB1"}`,
			want:    []string{`"age" must be greater than or equal to 0`},
		},
		{
			name:    "unsafe age",
			payload: `{"login":"Neo","age":1e300,"password":"aB1"}`,
			want:    []string{`"age" must be a safe number`},
		},
		{
			name:    "null fields",
			payload: `{"login":null,"age":null,"password":"aB1"}`,
			want:    []string{`"login" is required`, `"age" is required`},
		},
		{
			name:    "unknown keys",
			payload: `{"login":"Neo","age":30,"password":"aB1","zeta":1,"isDeleted":true}`,
			want:    []string{`"isDeleted" is not allowed`, `"zeta" is not allowed`},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := ValidateUser([]byte(tc.payload))
			if user != nil {
				t.Fatalf("expected no user, got %+v", user)
			}
			if got := fieldMessages(t, err); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateUserRejectsNonObject(t *testing.T) {
	for _, payload := range []string{`[]`, `"str"`, `null`, `{broken`} {
		_, err := ValidateUser([]byte(payload))
		var vErr *domainErrors.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected validation error, got %v", payload, err)
		}
		if len(vErr.Fields) != 1 {
			t.Fatalf("%s: expected one field error, got %v", payload, vErr.Fields)
		}
		if vErr.Fields[0].Message != `"value" must be of type object` || len(vErr.Fields[0].Path) != 0 {
			t.Fatalf("%s: unexpected field error %+v", payload, vErr.Fields[0])
		}
	}
}

func TestValidateUserErrorPaths(t *testing.T) {
	_, err := ValidateUser([]byte(`{"age":1,"password":"aB1"}`))
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Fields) != 1 || !reflect.DeepEqual(vErr.Fields[0].Path, []string{"login"}) {
		t.Fatalf("expected single login path, got %+v", vErr.Fields)
	}
}

func TestValidateUserPatch(t *testing.T) {
	patch, err := ValidateUserPatch([]byte(`{"age":0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.Age == nil || *patch.Age != 0 {
		t.Fatalf("expected age 0, got %v", patch.Age)
	}
	if patch.Login != nil || patch.Password != nil {
		t.Fatalf("expected only age set, got %+v", patch)
	}

	patch, err = ValidateUserPatch([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patch.Empty() {
		t.Fatalf("expected empty patch, got %+v", patch)
	}

	_, err = ValidateUserPatch([]byte(`{"login":"","password":"nope","role":"admin"}`))
	want := []string{
		`"login" is not allowed to be empty`,
		`"password" must contain only letters and digits, including an uppercase letter, a lowercase letter and a digit`,
		`"role" is not allowed`,
	}
	if got := fieldMessages(t, err); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestValidateUserRandomValidPayloads(t *testing.T) {
	for i := 0; i < 50; i++ {
		login := testhelpers.RandomLogin(1, 16)
		password := testhelpers.RandomPassword(3, 24)
		payload := fmt.Sprintf(`{"login":%q,"age":%d,"password":%q}`, login, i, password)

		user, err := ValidateUser([]byte(payload))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", payload, err)
		}
		if user.Login != login || user.Password != password {
			t.Fatalf("%s: unexpected user %+v", payload, user)
		}
	}
}
