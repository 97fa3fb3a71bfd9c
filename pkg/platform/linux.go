package platform

// LinuxPlatform implements Platform for Linux systems
type LinuxPlatform struct {
	*BasePlatform
}
