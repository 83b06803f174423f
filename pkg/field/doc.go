// Package field provides plain form controls implementing the capability
// interfaces of package validator: Field for scalar and list inputs, Select
// for fixed choices, Upload for files, SubmitButton and Group, a container
// validated through its own rule set.
//
// The controls hold state only. Rules are attached with package rules and
// evaluated by a validator.Library; Register adds the uploadValid and
// selectValid validators these controls support.
package field
