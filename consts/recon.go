package consts

const (
	// Run status codes
	StatusInit     = 1
	StatusRunning  = 2
	StatusFinished = 3
	StatusFailed   = 4

	// Asset data types
	DataTypePaytmSettlement    = 1
	DataTypeRazorpaySettlement = 2
	DataTypeShopifyOrders      = 3

	// Default config
	DefaultWorkerNumber  = 1
	DefaultIntervalInSec = 2
	DefaultUploadDir     = "uploads"
	DefaultOutputDir     = "outputs"
)
