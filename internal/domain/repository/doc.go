// Package repository define los tipos de dominio (Account, Resource) y los
// contratos de persistencia que consumen el resto de las capas. Los drivers
// concretos viven en internal/store.
package repository
