// Package fakes provides an in-memory gcloud.API for pipeline tests.
package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/docsearch/deployctl/internal/platform/gcloud"
)

// FakeAPI is a stateful in-memory provider. Mutating calls update the
// maps so idempotence tests can run the same pipeline twice against one
// instance. All calls are recorded in order.
type FakeAPI struct {
	mu sync.Mutex

	Account    string
	Structured bool

	EnabledServices map[string]bool
	// ServiceAccounts is keyed by email.
	ServiceAccounts map[string]bool
	Policy          *gcloud.Policy
	PolicyText      string
	Repositories    map[string]bool
	Images          map[string]bool   // image tag -> pushed
	Services        map[string]string // service name -> url

	// SAVisibleAfter delays service account visibility: the first N
	// describe calls after creation still report absent, simulating IAM
	// propagation lag.
	SAVisibleAfter int
	saDescribes    map[string]int

	Calls []string

	// Fail injects an error for the named call (e.g. "Enable",
	// "SubmitBuild"). The error is returned on every matching call.
	Fail map[string]error
}

// New returns an authenticated fake with structured output available and
// no pre-existing resources.
func New() *FakeAPI {
	return &FakeAPI{
		Account:         "fake@example.com",
		Structured:      true,
		EnabledServices: make(map[string]bool),
		ServiceAccounts: make(map[string]bool),
		Policy:          &gcloud.Policy{},
		Repositories:    make(map[string]bool),
		Images:          make(map[string]bool),
		Services:        make(map[string]string),
		saDescribes:     make(map[string]int),
		Fail:            make(map[string]error),
	}
}

func (f *FakeAPI) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.Fail[callName(call)]
}

func callName(call string) string {
	for i, r := range call {
		if r == '(' {
			return call[:i]
		}
	}
	return call
}

// CallCount returns how many times the named call was made.
func (f *FakeAPI) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.Calls {
		if callName(call) == name {
			n++
		}
	}
	return n
}

func (f *FakeAPI) ActiveAccount(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ActiveAccount()"); err != nil {
		return "", err
	}
	return f.Account, nil
}

func (f *FakeAPI) SupportsStructuredOutput(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.record("SupportsStructuredOutput()")
	return f.Structured
}

func (f *FakeAPI) IsEnabled(_ context.Context, projectID, service string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("IsEnabled(%s)", service)); err != nil {
		return false, err
	}
	return f.EnabledServices[service], nil
}

func (f *FakeAPI) Enable(_ context.Context, projectID, service string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("Enable(%s)", service)); err != nil {
		return err
	}
	f.EnabledServices[service] = true
	return nil
}

func (f *FakeAPI) DescribeServiceAccount(_ context.Context, projectID, email string) (gcloud.Existence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("DescribeServiceAccount(%s)", email)); err != nil {
		return gcloud.ExistenceUnknown, err
	}
	if !f.ServiceAccounts[email] {
		return gcloud.ExistenceAbsent, nil
	}
	f.saDescribes[email]++
	if f.saDescribes[email] <= f.SAVisibleAfter {
		return gcloud.ExistenceAbsent, nil
	}
	return gcloud.ExistencePresent, nil
}

func (f *FakeAPI) CreateServiceAccount(_ context.Context, projectID, name, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("CreateServiceAccount(%s)", name)); err != nil {
		return err
	}
	email := fmt.Sprintf("%s@%s.iam.gserviceaccount.com", name, projectID)
	f.ServiceAccounts[email] = true
	return nil
}

// MarkServiceAccountVisible clears the propagation delay for an email, as
// if the backend had caught up.
func (f *FakeAPI) MarkServiceAccountVisible(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ServiceAccounts[email] = true
	f.saDescribes[email] = f.SAVisibleAfter
}

func (f *FakeAPI) GetPolicy(_ context.Context, projectID string) (*gcloud.Policy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetPolicy()"); err != nil {
		return nil, err
	}
	return f.Policy, nil
}

func (f *FakeAPI) GetPolicyText(_ context.Context, projectID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetPolicyText()"); err != nil {
		return "", err
	}
	return f.PolicyText, nil
}

func (f *FakeAPI) AddBinding(_ context.Context, projectID, member, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("AddBinding(%s,%s)", role, member)); err != nil {
		return err
	}
	for i := range f.Policy.Bindings {
		if f.Policy.Bindings[i].Role == role {
			f.Policy.Bindings[i].Members = append(f.Policy.Bindings[i].Members, member)
			return nil
		}
	}
	f.Policy.Bindings = append(f.Policy.Bindings, gcloud.Binding{
		Role:    role,
		Members: []string{member},
	})
	return nil
}

func (f *FakeAPI) DescribeRepository(_ context.Context, projectID, repository, location string) (gcloud.Existence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("DescribeRepository(%s)", repository)); err != nil {
		return gcloud.ExistenceUnknown, err
	}
	if f.Repositories[repository] {
		return gcloud.ExistencePresent, nil
	}
	return gcloud.ExistenceAbsent, nil
}

func (f *FakeAPI) CreateRepository(_ context.Context, projectID, repository, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("CreateRepository(%s)", repository)); err != nil {
		return err
	}
	f.Repositories[repository] = true
	return nil
}

func (f *FakeAPI) DescribeImage(_ context.Context, tag string) (gcloud.Existence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("DescribeImage(%s)", tag)); err != nil {
		return gcloud.ExistenceUnknown, err
	}
	if f.Images[tag] {
		return gcloud.ExistencePresent, nil
	}
	return gcloud.ExistenceAbsent, nil
}

func (f *FakeAPI) SubmitBuild(_ context.Context, projectID, sourceDir, tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("SubmitBuild(%s)", tag)); err != nil {
		return err
	}
	f.Images[tag] = true
	return nil
}

func (f *FakeAPI) DeployService(_ context.Context, opts gcloud.DeployOpts) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("DeployService(%s)", opts.Service)); err != nil {
		return err
	}
	f.Services[opts.Service] = fmt.Sprintf("https://%s-fake.a.run.app", opts.Service)
	return nil
}

func (f *FakeAPI) ServiceURL(_ context.Context, projectID, service, region string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("ServiceURL(%s)", service)); err != nil {
		return "", err
	}
	url, ok := f.Services[service]
	if !ok {
		return "", fmt.Errorf("service %s not deployed", service)
	}
	return url, nil
}

func (f *FakeAPI) DescribeService(_ context.Context, projectID, service, region string) (gcloud.Existence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("DescribeService(%s)", service)); err != nil {
		return gcloud.ExistenceUnknown, err
	}
	if _, ok := f.Services[service]; ok {
		return gcloud.ExistencePresent, nil
	}
	return gcloud.ExistenceAbsent, nil
}
