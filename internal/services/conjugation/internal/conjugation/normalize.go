package conjugation

import "strings"

// Normalize strips the feminine agreement from a form. A trailing "e " loses
// its "e"; otherwise every "ée" collapses to "é". This works on surface text
// only, so a masculine form that legitimately ends that way is altered too.
func Normalize(form string) string {
	if strings.HasSuffix(form, "e ") {
		return strings.TrimSuffix(form, "e ") + " "
	}
	return strings.ReplaceAll(form, "ée", "é")
}
