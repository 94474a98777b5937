package cli

// User-facing failure messages. Details go to the log only.
const (
	msgLogin          = "Failed to login. Please check your credentials."
	msgRegister       = "Failed to register. Please check your information and try again."
	msgLoadProducts   = "Failed to load products."
	msgCreateProduct  = "Failed to create product."
	msgLoadDetails    = "Failed to load product details."
	msgUpdateStatus   = "Failed to update order status."
	msgLoadBloggers   = "Failed to load data."
	msgCreateBlogger  = "Failed to create blogger."
	msgCreateLink     = "Failed to create affiliate link."
	msgResolveLink    = "Failed to load affiliate link."
	msgLoadLanding    = "Failed to load product data."
	msgPlaceOrder     = "Failed to place order."
	msgOrderFields    = "Please fill in all fields correctly."
	msgBusy           = "Please wait, the previous action is still running."
	msgLoginRequired  = "Please log in first."
	msgLoading        = "Loading..."
	msgNoToken        = "No access token stored."
	msgNoProductShown = "Open a product first: product <id>"
	msgNoLanding      = "Open a product first: visit <productId> [bloggerId] or resolve <code>"
)
