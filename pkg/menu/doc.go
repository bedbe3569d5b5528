/*
Package menu composes a tree of bounded menu pages.

Every container holds at most Capacity controls (8 by default). When the last
page of a container is full, the next insert allocates a continuation page:
the full page's last control moves onto the new page and a "Page N" submenu
link takes its place. A page that continues therefore shows capacity-1
payload controls. Page numbering starts at 2; the origin container is
implicitly page 1.

Folder paths such as "Sounds/Cow" resolve to nested submenus, created on
first use and reused afterwards.
*/
package menu
