/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
  - Each bucket contains only one type of object.
  - Objects are addressed by their primary key, the bucket prefix is added
    transparently.
  - Easy queries for one and iteration.

Do not use so much reflection magic. Better do stuff compile-time static,
even if it is a bit of boilerplate.
*/
package orm
