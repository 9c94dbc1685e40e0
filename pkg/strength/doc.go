// Package strength tracks the password strength breakdown shown under password
// inputs. The breakdown is recomputed on every change of the watched field and
// only gated for display by the first focus event.
package strength
