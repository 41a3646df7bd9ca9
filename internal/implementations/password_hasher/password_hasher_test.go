package passwordhasher

import (
	"fmt"
	"regportal/internal/core/domain/user"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		secret   string
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, secret: "test", cost: 5, password: "test"},
		{ix: 2, secret: "", cost: 5, password: ""},
		{ix: 3, secret: "a", cost: 7, password: "password password"},
		{ix: 4, secret: "   b   ", cost: 10, password: "   test   "},
		{ix: 5, secret: "s3cr3t", cost: 4, password: "пароль-123"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.password, err)
			}
			if !h.ValidatePassword(user.RawPassword(c.password), hash) {
				t.Fatalf("password check failed: %v", c.password)
			}
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		secretToHash    string
		secretToCheck   string
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{
			ix:              1,
			secretToHash:    "test",
			secretToCheck:   "test",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test ",
		},
		{
			ix:              2,
			secretToHash:    "test",
			secretToCheck:   "test ",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test",
		},
		{
			ix:              3,
			secretToHash:    "",
			secretToCheck:   "",
			cost:            5,
			passwordToHash:  "",
			passwordToCheck: " ",
		},
		{
			ix:              4,
			secretToHash:    "",
			secretToCheck:   " ",
			cost:            8,
			passwordToHash:  "",
			passwordToCheck: "",
		},
		{
			ix:              5,
			secretToHash:    "a",
			secretToCheck:   "a",
			cost:            10,
			passwordToHash:  "password password",
			passwordToCheck: " password password",
		},
		{
			ix:              6,
			secretToHash:    "   b   ",
			secretToCheck:   "   b   ",
			cost:            8,
			passwordToHash:  "   test   ",
			passwordToCheck: "   tost   ",
		},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secretToHash, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.passwordToHash, err)
			}

			h = NewBcrypt(c.secretToCheck, c.cost)
			if h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash) {
				t.Fatalf("password check passed: %v, %v", c.passwordToHash, c.passwordToCheck)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcrypt("secret", 4)
	first, err := h.HashPassword(user.RawPassword("password"))
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}
	second, err := h.HashPassword(user.RawPassword("password"))
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}
	if first == second {
		t.Fatal("hashes of the same password must differ")
	}
	if strings.Contains(string(first), "password") {
		t.Fatal("hash must not contain the raw password")
	}
}

func TestMalformedHashIsInvalid(t *testing.T) {
	h := NewBcrypt("secret", 4)
	if h.ValidatePassword(user.RawPassword("password"), user.PasswordHash("not-a-bcrypt-hash")) {
		t.Fatal("malformed hash must not validate")
	}
}

func TestLongPasswords(t *testing.T) {
	prefix := strings.Repeat("x", 72)
	cases := []struct {
		name   string
		secret string
		hashed string
		other  string
	}{
		{
			name:   "difference past 72 bytes",
			secret: "pepper",
			hashed: prefix + "-first",
			other:  prefix + "-second",
		},
		{
			name:   "secret longer than 72 bytes",
			secret: strings.Repeat("s", 100),
			hashed: "secret-1",
			other:  "secret-2",
		},
		{
			name:   "longest form value",
			secret: "pepper",
			hashed: strings.Repeat("я", 256),
			other:  strings.Repeat("я", 255) + "ю",
		},
	}
	for _, testcase := range cases {
		testcase := testcase
		t.Run(testcase.name, func(t *testing.T) {
			h := NewBcrypt(testcase.secret, 4)

			hash, err := h.HashPassword(user.RawPassword(testcase.hashed))

			require.NoError(t, err)
			require.True(t, h.ValidatePassword(user.RawPassword(testcase.hashed), hash))
			require.False(t, h.ValidatePassword(user.RawPassword(testcase.other), hash))
		})
	}
}

func TestPepperedInputFitsBcrypt(t *testing.T) {
	h := NewBcrypt(strings.Repeat("s", 200), 4)

	for _, password := range []string{"", "a", strings.Repeat("x", 1024)} {
		require.Len(t, h.peppered(user.RawPassword(password)), 44)
	}
}
