package utils

import (
	"fmt"
	"strings"
)

// OnlyDigits removes every non numeric character from s
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

// checkDigit computes a mod 11 check digit over the first len(weights) digits
func checkDigit(digits string, weights []int) int {
	total := 0
	for i, w := range weights {
		total += int(digits[i]-'0') * w
	}
	if rem := total % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

// ValidCPF validates a CPF number, formatted or not
func ValidCPF(value string) bool {
	cpf := OnlyDigits(value)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}
	if checkDigit(cpf, []int{10, 9, 8, 7, 6, 5, 4, 3, 2}) != int(cpf[9]-'0') {
		return false
	}
	return checkDigit(cpf, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}) == int(cpf[10]-'0')
}

// ValidCNPJ validates a CNPJ number, formatted or not
func ValidCNPJ(value string) bool {
	cnpj := OnlyDigits(value)
	if len(cnpj) != 14 || allSame(cnpj) {
		return false
	}
	if checkDigit(cnpj, []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) != int(cnpj[12]-'0') {
		return false
	}
	return checkDigit(cnpj, []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == int(cnpj[13]-'0')
}

// ValidPhone validates a Brazilian phone with area code (10 or 11 digits).
// Mobile numbers (11 digits) must start with 9 after the area code.
func ValidPhone(value string) bool {
	phone := OnlyDigits(value)
	if len(phone) != 10 && len(phone) != 11 {
		return false
	}
	ddd := int(phone[0]-'0')*10 + int(phone[1]-'0')
	if ddd < 11 {
		return false
	}
	return len(phone) == 10 || phone[2] == '9'
}

// ValidCEP validates a postal code (8 digits, not all zeros)
func ValidCEP(value string) bool {
	cep := OnlyDigits(value)
	return len(cep) == 8 && cep != "00000000"
}

// FormatCPF formats a CPF as 000.000.000-00, returning value untouched when it is not 11 digits
func FormatCPF(value string) string {
	cpf := OnlyDigits(value)
	if len(cpf) != 11 {
		return value
	}
	return fmt.Sprintf("%s.%s.%s-%s", cpf[:3], cpf[3:6], cpf[6:9], cpf[9:])
}

// FormatCNPJ formats a CNPJ as 00.000.000/0000-00
func FormatCNPJ(value string) string {
	cnpj := OnlyDigits(value)
	if len(cnpj) != 14 {
		return value
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", cnpj[:2], cnpj[2:5], cnpj[5:8], cnpj[8:12], cnpj[12:])
}

// FormatPhone formats a phone as (00) 00000-0000 or (00) 0000-0000
func FormatPhone(value string) string {
	phone := OnlyDigits(value)
	switch len(phone) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", phone[:2], phone[2:7], phone[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", phone[:2], phone[2:6], phone[6:])
	}
	return value
}

// FormatCEP formats a postal code as 00000-000
func FormatCEP(value string) string {
	cep := OnlyDigits(value)
	if len(cep) != 8 {
		return value
	}
	return cep[:5] + "-" + cep[5:]
}
