// Package conf reads the archive policies config file, storage-archive-policies.conf
//
// every section declares a policy: which aggregation methods a metric keeps,
// at which granularities and for how long. metrics are assigned a policy by
// matching their id against the policy patterns in order of appearance.
//
// it also adds a default policy, so that even if nothing is matched in the
// user provided file, a policy is *always* found
package conf
