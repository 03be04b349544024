// Package flashing defines the flashing document model and its XML binding.
//
// A flashing document (servicefile.xml, flashfile.xml) has an optional
// descriptive header and an ordered list of steps:
//
//	<flashing>
//	  <header>
//	    <phone_model model="falcon_umts"/>
//	    <software_version version="falcon_umts-user 5.1 LPB23.13-56"/>
//	    <sparsing enabled="true" max-sparse-size="268435456"/>
//	    <interfaces>
//	      <interface name="AP"/>
//	    </interfaces>
//	  </header>
//	  <steps interface="AP">
//	    <step operation="getvar" var="max-sparse-size"/>
//	    <step operation="flash" partition="boot" filename="boot.img" MD5="..."/>
//	    <step operation="erase" partition="cache"/>
//	  </steps>
//	</flashing>
//
// Parse turns such a document into a read-only Document; Render dumps one
// back out as JSON or YAML for debugging. Nothing in this package executes
// steps.
package flashing
