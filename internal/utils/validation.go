package utils

import (
	"fmt"
	"regexp"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

func ValidateEmail(email string) (bool, error) {
	if !emailRegex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

// ValidatePhone accepts Indian mobile numbers in international or domestic
// form.
func ValidatePhone(phone string) (bool, error) {
	phonePatterns := []string{
		`^\+91[6-9]\d{9}$`, // +91 + 10-digit mobile
		`^91[6-9]\d{9}$`,   // 91 without +
		`^0[6-9]\d{9}$`,    // 0-prefixed domestic
		`^[6-9]\d{9}$`,     // bare 10-digit mobile
	}

	for _, pattern := range phonePatterns {
		if matched, _ := regexp.MatchString(pattern, phone); matched {
			return true, nil
		}
	}
	return false, fmt.Errorf("phone format incorrect")
}

var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// ValidatePAN checks the Permanent Account Number format (AAAAA9999A).
func ValidatePAN(pan string) bool {
	return panRegex.MatchString(pan)
}

var aadharRegex = regexp.MustCompile(`^[2-9]\d{11}$`)

// ValidateAadhar checks the 12-digit Aadhaar format. Aadhaar numbers never
// start with 0 or 1.
func ValidateAadhar(aadhar string) bool {
	cleaned := regexp.MustCompile(`[\s-]`).ReplaceAllString(aadhar, "")
	return aadharRegex.MatchString(cleaned)
}

var pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// ValidatePincode checks the 6-digit Indian postal code format.
func ValidatePincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}
