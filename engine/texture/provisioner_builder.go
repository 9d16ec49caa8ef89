package texture

import "net/http"

// ProvisionerBuilderOption is a functional option applied to a provisioner during construction via NewProvisioner.
type ProvisionerBuilderOption func(*provisionerImpl)

// WithHTTPClient sets the HTTP client used for remote texture fetches.
//
// Parameters:
//   - client: the client to use
//
// Returns:
//   - ProvisionerBuilderOption: option function to apply
func WithHTTPClient(client *http.Client) ProvisionerBuilderOption {
	return func(p *provisionerImpl) {
		if client != nil {
			p.client = client
		}
	}
}

// WithMaxDimension clamps decoded images to the device's maximum texture
// dimension; larger sources are downscaled preserving aspect ratio.
//
// Parameters:
//   - dim: the maximum texture width/height in pixels
//
// Returns:
//   - ProvisionerBuilderOption: option function to apply
func WithMaxDimension(dim int) ProvisionerBuilderOption {
	return func(p *provisionerImpl) {
		if dim > 0 {
			p.maxDimension = dim
		}
	}
}

// WithPlaceholderColor sets the 1x1 placeholder color surfaces render with
// until provisioning resolves.
//
// Parameters:
//   - r, g, b, a: the placeholder color components
//
// Returns:
//   - ProvisionerBuilderOption: option function to apply
func WithPlaceholderColor(r, g, b, a byte) ProvisionerBuilderOption {
	return func(p *provisionerImpl) {
		p.placeholder = [4]byte{r, g, b, a}
	}
}
