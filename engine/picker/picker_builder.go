package picker

// PickerBuilderOption is a functional option for configuring a Picker.
type PickerBuilderOption func(*pickerImpl)

// WithPolicy sets the view policy.
//
// Parameters:
//   - policy: which views accept pick queries
//
// Returns:
//   - PickerBuilderOption: functional option to set the policy
func WithPolicy(policy Policy) PickerBuilderOption {
	return func(p *pickerImpl) {
		p.policy = policy
	}
}

// WithPrimaryView sets the view index used by PolicyPrimaryView.
//
// Parameters:
//   - index: view index in the rig
//
// Returns:
//   - PickerBuilderOption: functional option to set the primary view
func WithPrimaryView(index int) PickerBuilderOption {
	return func(p *pickerImpl) {
		p.primaryView = index
	}
}
