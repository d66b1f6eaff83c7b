// Package domain contains the core entities of termdeck: users, the terms they
// study, and the Level and ReviewAction value types that position a term on
// the review ladder. Leveling rules live in the srs subpackage.
package domain
