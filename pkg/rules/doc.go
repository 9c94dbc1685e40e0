// Package rules holds the closed registry of named field validators and the
// composer that binds a requested rule list to a field label. Validators are
// pure functions of the value, the label and, for confirmPassword only, the
// current value of the sibling password field read through a FieldValueReader.
package rules
