package utils

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RemoveString returns hay without the first occurrence of needle, keeping
// the relative order of the remaining elements.
func RemoveString(hay []string, needle string) []string {
	for i, str := range hay {
		if str == needle {
			return append(hay[:i:i], hay[i+1:]...)
		}
	}
	return hay
}
