//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation

#include <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>

int checkAccessibility(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import "errors"

// CheckAccess verifies the Accessibility permission needed to observe and
// inject keystrokes. The first failing call shows the system prompt.
func CheckAccess() error {
	if C.checkAccessibility(1) == 1 {
		return nil
	}
	return errors.New("accessibility permission required: open System Settings > Privacy & Security > Accessibility, enable this application and restart it")
}
