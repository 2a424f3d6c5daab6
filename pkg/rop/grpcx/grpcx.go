// Package grpcx converts rop results to and from gRPC statuses.
//
// Every error reason becomes one errdetails.ErrorInfo detail whose Reason is
// the reason kind and whose Metadata holds the message and the stringified
// tags.
package grpcx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"github.com/ib-77/fluentrop/pkg/rop"
)

const (
	// Domain is set on every ErrorInfo produced here.
	Domain = "fluentrop"
	// MetadataMessage is the ErrorInfo metadata key holding the reason message.
	MetadataMessage = "message"
	// TagKind holds the kind of the original reason on decoded errors.
	TagKind = "Kind"
)

// Code picks the gRPC code for r.
func Code(r rop.Outcome) codes.Code {
	if r.IsSuccess() {
		return codes.OK
	}

	code := codes.InvalidArgument
	for _, err := range r.Errors() {
		switch e := err.(type) {
		case *rop.TimeoutError:
			return codes.DeadlineExceeded
		case *rop.ExceptionError:
			switch {
			case errors.Is(e.Cause(), context.DeadlineExceeded):
				return codes.DeadlineExceeded
			case rop.IsCancellationError(e.Cause()):
				code = codes.Canceled
			case code != codes.Canceled:
				code = codes.Internal
			}
		}
	}
	return code
}

// Status projects r onto a gRPC status. A success maps to codes.OK.
func Status(r rop.Outcome) *status.Status {
	if r.IsSuccess() {
		return status.New(codes.OK, "")
	}

	errs := r.Errors()
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message()
	}
	st := status.New(Code(r), strings.Join(messages, "; "))

	details := make([]*errdetails.ErrorInfo, len(errs))
	for i, e := range errs {
		details[i] = errorInfo(e)
	}
	with, err := st.WithDetails(toV1(details)...)
	if err != nil {
		return st
	}
	return with
}

// Err is Status(r).Err(); nil for a success.
func Err(r rop.Outcome) error {
	if r.IsSuccess() {
		return nil
	}
	return Status(r).Err()
}

// FromStatus rebuilds a result from st. Each ErrorInfo detail becomes a
// rop.Error carrying the detail metadata as tags; a status without details
// yields a single error with the status message.
func FromStatus(st *status.Status) rop.Result {
	if st == nil || st.Code() == codes.OK {
		return rop.Ok()
	}

	var errs []rop.ErrorReason
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok {
			continue
		}
		errs = append(errs, fromErrorInfo(info, st))
	}
	if len(errs) == 0 {
		errs = append(errs, rop.NewError(message(st.Message(), st)))
	}
	return rop.FailErrors(errs)
}

// UnaryServerInterceptor converts handler errors that wrap a *rop.ResultError
// into statuses with ErrorInfo details. Other errors pass through.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var re *rop.ResultError
		if !errors.As(err, &re) {
			return nil, err
		}
		return nil, Err(rop.FailErrors(re.Errors()))
	}
}

func errorInfo(e rop.ErrorReason) *errdetails.ErrorInfo {
	metadata := map[string]string{MetadataMessage: e.Message()}
	for k, v := range e.Tags() {
		metadata[k] = fmt.Sprint(v)
	}
	return &errdetails.ErrorInfo{
		Reason:   rop.Kind(e),
		Domain:   Domain,
		Metadata: metadata,
	}
}

func fromErrorInfo(info *errdetails.ErrorInfo, st *status.Status) rop.ErrorReason {
	tags := make(map[string]any, len(info.GetMetadata()))
	for k, v := range info.GetMetadata() {
		if k != MetadataMessage {
			tags[k] = v
		}
	}
	tags[TagKind] = info.GetReason()

	return rop.NewError(message(info.GetMetadata()[MetadataMessage], st)).WithTags(tags)
}

func message(m string, st *status.Status) string {
	if m != "" {
		return m
	}
	return st.Code().String()
}

func toV1(details []*errdetails.ErrorInfo) []protoadapt.MessageV1 {
	out := make([]protoadapt.MessageV1, len(details))
	for i, d := range details {
		out[i] = d
	}
	return out
}
