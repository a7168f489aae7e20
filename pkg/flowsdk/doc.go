/*
Package flowsdk provides a client SDK for the authflow login service.

# Overview

The service authenticates users in two steps: a password check followed by a
six-digit code sent by email. A device that completes verification is
trusted for a window and skips the code on later logins. All of this rides
on cookies, so the Client keeps a cookie jar; one Client behaves like one
browser.

Create a client and walk the flow:

	client, err := flowsdk.NewClient("https://login.example.com")

	res, err := client.Login(ctx, "alice", password)
	if err != nil {
		// *flowsdk.FlowError carries the error code and HTTP status
	}

	switch res.State {
	case flowsdk.StateAuthenticated:
		// device trust skipped the code
	case flowsdk.StateOTPPending:
		// a code was emailed; collect it from the user
		verified, err := client.Verify(ctx, code)
		_ = verified
	}

While a code is pending the user can ask for a fresh one:

	res, err := client.Resend(ctx)

Logout destroys the session but leaves device trust in place, so the next
login on the same client skips the code until the trust window lapses:

	err := client.Logout(ctx)

# Error Handling

Failures come back as *FlowError with a machine-readable code:

	_, err := client.Verify(ctx, code)
	var flowErr *flowsdk.FlowError
	if errors.As(err, &flowErr) {
		switch flowErr.Code {
		case flowsdk.ErrorCodeInvalidCode:
			// wrong code, the challenge is still live; ask again
		case flowsdk.ErrorCodeCodeExpired, flowsdk.ErrorCodeSessionExpired:
			// restart from Login
		}
	}

# Operator Endpoints

Account provisioning requires the admin token:

	client.AdminToken = os.Getenv("AUTHFLOW_ADMIN_TOKEN")
	user, err := client.CreateUser(ctx, flowsdk.CreateUserRequest{
		Username: "alice",
		Password: password,
		Email:    "alice@example.com",
	})
*/
package flowsdk
