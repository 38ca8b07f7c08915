package videobackend

import "gocv.io/x/gocv"

func OverloadOpenVideoCapture(overload func(addr string) (*gocv.VideoCapture, error)) func() {
	openVideoCaptureRef := openVideoCapture
	openVideoCapture = overload
	return func() { openVideoCapture = openVideoCaptureRef }
}

func OverloadCloseVideoCapture(overload func(vc *gocv.VideoCapture) error) func() {
	closeVideoCaptureRef := closeVideoCapture
	closeVideoCapture = overload
	return func() { closeVideoCapture = closeVideoCaptureRef }
}
