package test

import (
	"math/rand/v2"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	alphanumeric = lowerLetters + upperLetters + digits
)

// RandomLogin returns a pseudo-random alphanumeric login within the provided bounds.
func RandomLogin(minLen, maxLen int) string {
	return randomFrom(alphanumeric, randomLength(minLen, maxLen))
}

// RandomPassword returns a pseudo-random password that satisfies the complexity rule:
// letters and digits only, with at least one lowercase, one uppercase and one digit.
func RandomPassword(minLen, maxLen int) string {
	if minLen < 3 {
		minLen = 3
	}
	length := randomLength(minLen, maxLen)
	buf := []byte(randomFrom(alphanumeric, length))
	required := []string{lowerLetters, upperLetters, digits}
	positions := rand.Perm(length)[:len(required)]
	for i, set := range required {
		buf[positions[i]] = set[rand.IntN(len(set))]
	}
	return string(buf)
}

func randomLength(minLen, maxLen int) int {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	return minLen + rand.IntN(maxLen-minLen+1)
}

func randomFrom(set string, length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = set[rand.IntN(len(set))]
	}
	return string(buf)
}
