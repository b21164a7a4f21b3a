// Package valueobject implements value objects as described in the DDD book:
// immutable records identified by the values of their properties rather than
// by identity.
//
// A concrete type is declared with Define, pairing a registered name with a
// Property Schema, either positional (names only) or named (name plus
// Descriptor per property). Construction validates argument shape and types,
// assigns every declared property and freezes the instance; nil is valid for
// any property, Undefined never is. Instances support structural equality
// (IsEqualTo), copy-with-overrides (With), a validation hook (Validate), and
// JSON serialization tagged with the type name so a Deserializer can
// reconstruct the correct concrete type from a registry.
package valueobject
